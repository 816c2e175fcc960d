package repository

import (
	"errors"

	"github.com/cristianbbs/kolder-backend/entity"

	"gorm.io/gorm"
)

// ConfigRepository reads and writes the single global-config row. Callers
// fetch it at the moment they need a value; nothing is cached in process.
type ConfigRepository struct {
	DB *gorm.DB
}

func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{DB: db}
}

// Get returns the config row, or nil when none exists yet.
func (r *ConfigRepository) Get() (*entity.GlobalConfig, error) {
	var cfg entity.GlobalConfig
	err := r.DB.First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save applies partial updates, creating the row on first write.
func (r *ConfigRepository) Save(updates map[string]any) (*entity.GlobalConfig, error) {
	cur, err := r.Get()
	if err != nil {
		return nil, err
	}
	if cur == nil {
		cur = &entity.GlobalConfig{}
		if err := r.DB.Create(cur).Error; err != nil {
			return nil, err
		}
	}
	if err := r.DB.Model(cur).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.Get()
}
