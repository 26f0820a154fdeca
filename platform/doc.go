// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package platform is the seam between the election core and the chat platform.

The core consumes exactly three things from the outside world: an inbound
Interaction (opaque callback token plus actor identity), the ability to render
prompts back to that actor, and nothing else. Renderer captures the outbound
half; everything in handlers is written against it.

WebhookClient is the production Renderer, speaking the platform's HTTP
callback API. Tests substitute a recording fake (see testutil.FakeRenderer),
which keeps the entire interaction flow testable without a gateway
connection.

Outbound calls are not retried here. If the host event system redelivers an
interaction, the same prompt may render twice; exactly-once UI delivery is
explicitly not guaranteed.
*/
package platform
