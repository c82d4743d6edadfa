package repository

import (
	"fmt"

	"ia-chat/internal/model"
)

// storageErr 将数据库错误包装为 model.ErrStorage，同时保留原始错误
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, model.ErrStorage, err)
}
