package cache

import "cosmossdk.io/errors"

const codespace = "cache"

var (
	ErrKeyValueCacheConfigValidation = errors.Register(codespace, 1, "invalid cache config")
	ErrCacheInternal                 = errors.Register(codespace, 2, "cache internal error")
	ErrCacheMiss                     = errors.Register(codespace, 3, "cache miss")
)
