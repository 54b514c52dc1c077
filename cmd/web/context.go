package main

// The contextKey type provides unique keys to store and retrieve request data without the risk of
// naming collisions.
type contextKey string

const requestInfoContextKey = contextKey("requestInfo")
