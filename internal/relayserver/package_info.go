// Package relayserver implements the loopback relay server: the singleton
// listener that receives handshake, life-cycle, and forwarded requests from a
// relay client in another process, resolves the applicable boundary handler
// list, runs the execution pipeline, and ships the synthesized response back.
package relayserver
