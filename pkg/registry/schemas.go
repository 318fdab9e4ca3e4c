package registry

func object(required []string, properties map[string]any) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

var (
	stringProp = map[string]any{"type": "string", "minLength": 1}
	urlProp    = map[string]any{"type": "string", "format": "uri"}
)

var (
	webhookSchema = object([]string{"path"}, map[string]any{
		"path":   map[string]any{"type": "string", "pattern": "^/"},
		"method": map[string]any{"type": "string", "enum": []any{"GET", "POST", "PUT", "PATCH", "DELETE"}},
	})

	scheduleSchema = object([]string{"cron"}, map[string]any{
		"cron":     stringProp,
		"timezone": stringProp,
	})

	eventSchema = object([]string{"event"}, map[string]any{
		"event": stringProp,
	})

	httpSchema = object([]string{"url"}, map[string]any{
		"url":       urlProp,
		"method":    map[string]any{"type": "string", "enum": []any{"GET", "POST", "PUT", "PATCH", "DELETE"}},
		"headers":   map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}},
		"timeoutMs": map[string]any{"type": "integer", "minimum": 1},
	})

	emailSchema = object([]string{"to", "subject"}, map[string]any{
		"to":      map[string]any{"type": "string", "format": "email"},
		"subject": stringProp,
		"body":    map[string]any{"type": "string"},
	})

	dbWriteSchema = object([]string{"table"}, map[string]any{
		"table":      stringProp,
		"connection": stringProp,
		"upsert":     map[string]any{"type": "boolean"},
	})

	notifySchema = object([]string{"channel"}, map[string]any{
		"channel": stringProp,
		"message": map[string]any{"type": "string"},
	})

	qubeSchema = object(nil, map[string]any{
		"algorithm": map[string]any{"type": "string", "enum": []any{"kyber", "dilithium", "falcon", "sphincs"}},
		"strength":  map[string]any{"type": "integer", "enum": []any{512, 768, 1024}},
	})

	classifierSchema = object([]string{"classes"}, map[string]any{
		"classes": map[string]any{"type": "array", "minItems": 2, "items": stringProp},
	})

	branchSchema = object([]string{"condition"}, map[string]any{
		"condition": stringProp,
	})

	transformSchema = object(nil, map[string]any{
		"expression": stringProp,
	})
)
