// Package zapencoder lets a zap logger write pattern-formatted lines.
//
//	p := pattern.Compile("[%Y-%m-%d %T.%e] [%n] [%l] %v")
//	log := zap.New(zapencoder.NewCore(p, zapcore.AddSync(os.Stderr), zap.InfoLevel))
//
// Zap levels map onto the nearest logging level (DPanic, Panic and Fatal
// render as critical); fields are appended as a JSON object.
package zapencoder
