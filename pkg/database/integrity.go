package database

import (
	"context"

	"gorm.io/gorm"
)

// missingTables 返回 required 中在库里不存在的表
func missingTables(ctx context.Context, db *gorm.DB, required []string) ([]string, error) {
	var names []string
	err := db.WithContext(ctx).
		Table("sqlite_master").
		Where("type = ?", "table").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(names))
	for _, name := range names {
		present[name] = struct{}{}
	}

	var missing []string
	for _, name := range required {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
