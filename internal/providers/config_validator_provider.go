package providers

import (
	"errors"
	"fmt"
	"github.com/gookit/validate"
	"intentd/internal/structures"
)

type CnfValidatorInterface interface {
	Validate() error
}

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) CnfValidatorInterface {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %w", v.Errors.ErrOrNil())
	}

	switch cv.conf.Storage.Driver {
	case "file":
		if cv.conf.Storage.Dir == "" {
			return errors.New("invalid config: storage.dir is required for the file driver")
		}
	case "redis":
		if cv.conf.Storage.Redis.Addr == "" {
			return errors.New("invalid config: storage.redis.addr is required for the redis driver")
		}
	}
	return nil
}
