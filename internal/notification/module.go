package notification

import "go.uber.org/fx"

// Module provides the storefront notifier.
var Module = fx.Provide(NewNotifier)
