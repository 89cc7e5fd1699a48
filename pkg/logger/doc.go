// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// A single factory, New, creates a *slog.Logger configured by Option
// functions: output format (text or json), minimum level, static default
// attributes, and ContextExtractor callbacks that pull attributes out of the
// context on every Handle call (for example the bound tenant id).
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Environment, "workhub"),
//	    logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "module enabled",
//	    logger.Module("crm"),
//	    logger.UserID(userID),
//	)
//
// Helper constructors such as Error, TenantID, and Module keep attribute
// naming consistent across the codebase. Error and Errors produce attributes
// only for non-nil errors, so they can be passed unconditionally.
package logger
