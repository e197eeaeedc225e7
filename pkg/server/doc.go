// Package server hosts weft components over HTTP and websockets.
//
// Each websocket connection gets its own Session: a private mount of the
// root component, a task loop that serializes event dispatch and scheduler
// flushes onto one goroutine, and a diff-based patch stream back to the
// thin client. The page handler serves a one-shot server render of the
// same root so first paint never waits for the socket.
package server
