// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package netconf

// Res represents the outcome of one NETCONF RPC exchange.
type Res struct {
	// OK indicates the device accepted the operation
	OK bool

	// MessageID echoes the request frame's message-id
	MessageID string

	// Data is the raw XML content of the reply data element, empty for
	// operations that reply with <ok/>
	Data string

	// Raw is the complete rpc-reply frame as received
	Raw string

	// Faults holds rpc-error entries from a rejected operation
	Faults []Fault
}

// resFromReply converts a parsed rpc-reply into a Res.
func resFromReply(reply *rpcReply, raw string) Res {
	return Res{
		OK:        len(reply.Faults) == 0,
		MessageID: reply.MessageID,
		Data:      reply.Data.Content,
		Raw:       raw,
		Faults:    reply.Faults,
	}
}
