// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memory

// logTruncated replaces all log lines exceeding the byte limit.
const logTruncated = "Log truncated"

// logCollector gathers the log lines of a transaction. Once the byte limit
// is reached, a single truncation marker is recorded and all further lines
// are dropped.
type logCollector struct {
	messages  []string
	written   uint64
	limit     *uint64
	truncated bool
}

func newLogCollector(limit *uint64) *logCollector {
	return &logCollector{limit: limit}
}

func (c *logCollector) log(message string) {
	if c.truncated {
		return
	}
	written := c.written + uint64(len(message))
	if c.limit != nil && written >= *c.limit {
		c.truncated = true
		c.messages = append(c.messages, logTruncated)
		return
	}
	c.written = written
	c.messages = append(c.messages, message)
}
