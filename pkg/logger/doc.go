// Package logger builds the structured slog loggers used across lodgekit.
//
// New returns a *slog.Logger configured through Option functions. The handler
// is wrapped in a LogHandlerDecorator that runs ContextExtractor callbacks on
// every record, which is how request ids end up in request-scoped logs.
//
//	opts, err := logger.FromConfig(cfg.Log)
//	if err != nil {
//	    return err
//	}
//	log := logger.New(append(opts,
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)...)
//	logger.SetAsDefault(log)
//
// Attribute helpers such as SessionID, NotificationID, Lang and Error keep key
// names consistent. Helpers given a zero value return an empty slog.Attr,
// which handlers drop, so callers need no nil checks:
//
//	log.LogAttrs(ctx, slog.LevelWarn, "Failed to show toast",
//	    logger.SessionID(id),
//	    logger.Error(err),
//	)
package logger
