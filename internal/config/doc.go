// Package config handles configuration loading for favbot.
//
// Configuration is loaded from a TOML file with environment variable
// expansion: values may reference ${VAR_NAME}, which is replaced with the
// variable's value before decoding. Unset fields fall back to defaults
// (command prefix "!", save emoji 🔖, 5m dedupe TTL).
//
// The default file location is $FAVBOT_CONFIG, then
// $XDG_CONFIG_HOME/favbot/favbot.toml, then ~/.config/favbot/favbot.toml;
// path resolution lives in cmd/favbot.
package config
