package configs

import "errors"

// Configurable is a typed config value stored under ConfigPath in the cue files.
type Configurable interface {
	ConfigPath() string
}

// Value decodes the first definition of T, or returns the zero T.
func Value[T Configurable](loader Loader) (ret T, ok bool, err error) {
	if err := loader.AssignFirst(ret.ConfigPath(), &ret); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return ret, false, nil
		}
		return ret, false, err
	}
	return ret, true, nil
}
