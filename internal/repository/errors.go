package repository

import "errors"

// 見つからない場合を統一
var ErrNotFound = errors.New("not found")
