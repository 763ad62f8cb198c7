// Package logger provee el logger zap del proceso.
//
// El ciclo de vida lo posee la aplicación anfitriona: Init() en main,
// Sync() con defer al salir. Los paquetes del núcleo no configuran nada;
// obtienen un logger con Named()/From(ctx) y lo enhebran explícitamente
// por cada llamada.
//
// Uso:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//	log := logger.Named("store.pg")
package logger
