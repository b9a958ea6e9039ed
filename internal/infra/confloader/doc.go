// Package confloader layers configuration sources with koanf.
//
// Sources apply in order, later ones winning: the caller's defaults, a
// YAML file, environment variables, then explicit overrides such as
// command-line flags. Environment variables carry the KERNBENCH_ prefix
// and use a double underscore between sections so that single
// underscores can appear in key names:
//
//	KERNBENCH_STORAGE__DATA_DIR=/var/lib/kernbench  ->  storage.data_dir
//	KERNBENCH_RUN__TRIALS=10                         ->  run.trials
//
// Watcher reports edits to a configuration file so that serve mode can
// pick up new run defaults without a restart.
package confloader
