package patterns

import "time"

// DefaultTimeout is the default timeout for outbound transport calls
// (SMTP dial, webhook POST).
const DefaultTimeout = 3 * time.Second

// SlowServiceTimeout is a longer timeout for endpoints that might be slow
const SlowServiceTimeout = 10 * time.Second
