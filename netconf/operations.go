// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package netconf

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// newMessageID generates a unique message-id for request/reply
// correlation.
func newMessageID() string {
	return uuid.NewString()
}

// Do sends one framed RPC with the given operation element and returns
// the parsed reply. The session is established on first use. A reply
// carrying rpc-error entries is returned alongside an *RPCError so
// callers can use either the result value or standard error handling.
func (c *Client) Do(ctx context.Context, operation, content string) (Res, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConnected(ctx); err != nil {
		return Res{}, err
	}
	if err := ctx.Err(); err != nil {
		return Res{}, err
	}

	messageID := newMessageID()
	frame := wrapRPC(messageID, content)

	c.logger.Debug(ctx, "NETCONF request",
		"host", c.Host,
		"operation", operation,
		"message_id", messageID)

	if _, err := c.stdin.Write([]byte(frame)); err != nil {
		// The session is unusable after a write failure.
		c.teardown()
		return Res{}, &RPCError{
			Operation: operation,
			MessageID: messageID,
			Message:   fmt.Sprintf("sending rpc: %v", err),
		}
	}

	raw, err := c.readFrame()
	if err != nil {
		c.teardown()
		return Res{}, &RPCError{
			Operation: operation,
			MessageID: messageID,
			Message:   fmt.Sprintf("reading reply: %v", err),
		}
	}

	reply, err := parseReply(raw)
	if err != nil {
		return Res{Raw: raw}, &RPCError{
			Operation: operation,
			MessageID: messageID,
			Message:   err.Error(),
		}
	}

	res := resFromReply(reply, raw)
	if !res.OK {
		c.logger.Warn(ctx, "NETCONF request rejected",
			"host", c.Host,
			"operation", operation,
			"faults", len(res.Faults))
		return res, &RPCError{
			Operation: operation,
			MessageID: reply.MessageID,
			Faults:    res.Faults,
		}
	}

	return res, nil
}

// Get retrieves state and configuration data, optionally scoped by a
// subtree filter. An empty filter retrieves the full tree.
func (c *Client) Get(ctx context.Context, filter string) (Res, error) {
	return c.Do(ctx, "get", buildGet(filter))
}

// GetConfig retrieves configuration data from the given datastore,
// optionally scoped by a subtree filter.
func (c *Client) GetConfig(ctx context.Context, source Datastore, filter string) (Res, error) {
	return c.Do(ctx, "get-config", buildGetConfig(source, filter))
}

// EditConfig merges the XML config payload into the target datastore.
// Use EditConfigWithOperation for replace semantics.
func (c *Client) EditConfig(ctx context.Context, target Datastore, config string) (Res, error) {
	return c.EditConfigWithOperation(ctx, target, config, OperationMerge)
}

// EditConfigWithOperation applies the XML config payload to the target
// datastore using the given default-operation (merge, replace, or none).
func (c *Client) EditConfigWithOperation(ctx context.Context, target Datastore, config, defaultOperation string) (Res, error) {
	if config == "" {
		return Res{}, &RPCError{
			Operation: "edit-config",
			Message:   "config payload cannot be empty",
		}
	}
	return c.Do(ctx, "edit-config", buildEditConfig(target, config, defaultOperation))
}

// Lock acquires an exclusive lock on the target datastore. A lock held
// elsewhere is rejected by the device with a lock-denied fault.
func (c *Client) Lock(ctx context.Context, target Datastore) (Res, error) {
	return c.Do(ctx, "lock", buildLock(target))
}

// Unlock releases a lock on the target datastore.
func (c *Client) Unlock(ctx context.Context, target Datastore) (Res, error) {
	return c.Do(ctx, "unlock", buildUnlock(target))
}

// Validate checks the contents of the source datastore for syntactic and
// semantic validity, where the device supports the validate capability.
func (c *Client) Validate(ctx context.Context, source Datastore) (Res, error) {
	return c.Do(ctx, "validate", buildValidate(source))
}

// Commit promotes the candidate datastore to running.
func (c *Client) Commit(ctx context.Context) (Res, error) {
	return c.Do(ctx, "commit", "<commit/>")
}

// DiscardChanges reverts the candidate datastore to the running
// configuration.
func (c *Client) DiscardChanges(ctx context.Context) (Res, error) {
	return c.Do(ctx, "discard-changes", "<discard-changes/>")
}
