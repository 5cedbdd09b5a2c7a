// internal/metrics/payload.go
package metrics

import (
	"go-towers/internal/entity"
)

func count(data interface{}) int {
	if enemies, ok := data.([]*entity.Enemy); ok {
		return len(enemies)
	}
	return 0
}

func towerKind(data interface{}) (string, bool) {
	t, ok := data.(*entity.Tower)
	if !ok || t == nil {
		return "", false
	}
	return t.Def.ID, true
}
