// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package netconf

import (
	"encoding/xml"
	"fmt"
)

// BaseNamespace is the NETCONF base protocol namespace.
const BaseNamespace = "urn:ietf:params:xml:ns:netconf:base:1.0"

// messageEnd is the RFC 6242 end-of-message framing marker.
const messageEnd = "]]>]]>"

// Datastore names a NETCONF configuration datastore.
type Datastore string

const (
	// Running is the active device configuration
	Running Datastore = "running"

	// Candidate is the staging datastore on devices with the candidate
	// capability; changes take effect on commit
	Candidate Datastore = "candidate"

	// Startup is the configuration loaded at boot, where supported
	Startup Datastore = "startup"
)

// MergeOperation values for edit-config default-operation.
const (
	OperationMerge   = "merge"
	OperationReplace = "replace"
	OperationNone    = "none"
)

// clientHello is the capabilities announcement sent on session start.
const clientHello = `<?xml version="1.0" encoding="UTF-8"?>
<hello xmlns="urn:ietf:params:xml:ns:netconf:base:1.0">
  <capabilities>
    <capability>urn:ietf:params:netconf:base:1.0</capability>
  </capabilities>
</hello>` + messageEnd

// helloMessage is the parsed server hello.
type helloMessage struct {
	XMLName      xml.Name `xml:"hello"`
	SessionID    string   `xml:"session-id"`
	Capabilities []string `xml:"capabilities>capability"`
}

// rpcReply is the parse target for a NETCONF rpc-reply frame.
type rpcReply struct {
	XMLName   xml.Name  `xml:"rpc-reply"`
	MessageID string    `xml:"message-id,attr"`
	OK        *struct{} `xml:"ok"`
	Data      innerXML  `xml:"data"`
	Faults    []Fault   `xml:"rpc-error"`
}

// innerXML captures an element's raw XML content without decoding it.
type innerXML struct {
	Content string `xml:",innerxml"`
}

// wrapRPC frames an operation element into a complete rpc message with
// the end-of-message marker.
func wrapRPC(messageID, content string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rpc message-id="%s" xmlns="%s">
%s
</rpc>%s`, messageID, BaseNamespace, content, messageEnd)
}

// buildGet builds a get operation, optionally scoped by a subtree filter.
func buildGet(filter string) string {
	if filter == "" {
		return "<get/>"
	}
	return fmt.Sprintf(`<get><filter type="subtree">%s</filter></get>`, filter)
}

// buildGetConfig builds a get-config operation against source, optionally
// scoped by a subtree filter.
func buildGetConfig(source Datastore, filter string) string {
	if filter == "" {
		return fmt.Sprintf(`<get-config><source><%s/></source></get-config>`, source)
	}
	return fmt.Sprintf(`<get-config><source><%s/></source><filter type="subtree">%s</filter></get-config>`,
		source, filter)
}

// buildEditConfig builds an edit-config operation against target with the
// given default-operation and config payload.
func buildEditConfig(target Datastore, config, defaultOperation string) string {
	return fmt.Sprintf(`<edit-config>
  <target><%s/></target>
  <default-operation>%s</default-operation>
  <config>%s</config>
</edit-config>`, target, defaultOperation, config)
}

// buildLock builds a lock operation against target.
func buildLock(target Datastore) string {
	return fmt.Sprintf(`<lock><target><%s/></target></lock>`, target)
}

// buildUnlock builds an unlock operation against target.
func buildUnlock(target Datastore) string {
	return fmt.Sprintf(`<unlock><target><%s/></target></unlock>`, target)
}

// buildValidate builds a validate operation against source.
func buildValidate(source Datastore) string {
	return fmt.Sprintf(`<validate><source><%s/></source></validate>`, source)
}

// parseReply decodes an rpc-reply frame. A decode failure is reported as
// an error; faults inside a well-formed reply are the caller's concern.
func parseReply(raw string) (*rpcReply, error) {
	var reply rpcReply
	if err := xml.Unmarshal([]byte(raw), &reply); err != nil {
		return nil, fmt.Errorf("malformed rpc-reply: %w", err)
	}
	return &reply, nil
}

// parseHello decodes the server hello frame.
func parseHello(raw string) (*helloMessage, error) {
	var hello helloMessage
	if err := xml.Unmarshal([]byte(raw), &hello); err != nil {
		return nil, fmt.Errorf("malformed hello: %w", err)
	}
	if hello.SessionID == "" {
		return nil, fmt.Errorf("server hello missing session-id")
	}
	return &hello, nil
}
