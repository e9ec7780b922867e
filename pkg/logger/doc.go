// Package logger builds *slog.Logger instances with functional options,
// provides attribute helpers with stable keys for the tailoring domain, and
// injects request-scoped values (tenant id, request id) from context.Context.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "tailoringd"),
//		logger.WithContextExtractors(
//			tenant.LoggerExtractor(),
//			api.RequestIDExtractor(),
//		),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "dangling drd reference",
//		logger.Requirement(req.ID),
//		logger.DRD(number),
//	)
//
// Error and Errors produce attributes only for non-nil errors, so
//
//	log.Info("generated", logger.Error(err))
//
// needs no nil check.
package logger
