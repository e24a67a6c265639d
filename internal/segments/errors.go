package segments

import "github.com/kpath1999/gtbusmap/internal/models"

// MalformedInputError is returned when a metric or category cannot be read
// from a point. Missing coordinates never produce it.
type MalformedInputError = models.MalformedInputError
