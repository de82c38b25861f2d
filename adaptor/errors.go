package adaptor

import "github.com/pkg/errors"

func errBadSigma(sigma, min, max float64) error {
	return errors.Errorf("adaptor: sigma %g outside [%g, %g] or negative", sigma, min, max)
}
