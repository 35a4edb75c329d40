package main

import (
	"github.com/tidwall/gjson"
)

// applyEventOverrides lets a scheduled invocation override the channels and
// day offset. Fields are read at the top level or, for EventBridge events,
// under "detail".
func applyEventOverrides(cfg *Config, event []byte) {
	if len(event) == 0 || !gjson.ValidBytes(event) {
		return
	}
	root := gjson.ParseBytes(event)
	get := func(key string) gjson.Result {
		if v := root.Get(key); v.Exists() {
			return v
		}
		return root.Get("detail." + key)
	}

	if v := get("sourceChannel"); v.Type == gjson.String && v.String() != "" {
		cfg.SourceChannel = v.String()
	}
	if v := get("destinationChannel"); v.Type == gjson.String && v.String() != "" {
		cfg.DestinationChannel = v.String()
	}
	if v := get("dayOffset"); v.Exists() {
		switch v.Type {
		case gjson.Number:
			cfg.DayOffset = int(v.Int())
		case gjson.String:
			if n := gjson.Parse(v.String()); n.Type == gjson.Number {
				cfg.DayOffset = int(n.Int())
			}
		}
	}
}
