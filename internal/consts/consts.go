package consts

const (
	CHARGE    = 1.6021918e-19 // Elementary charge (C)
	BOLTZMANN = 1.3806226e-23 // Boltzmann constant (J/K)
	KELVIN    = 273.15        // Kelvin temperature (K)
)

// Engine defaults. Callers can override tolerance and iteration budget per
// analysis; the rest are fixed properties of the formulation.
const (
	DefaultTolerance = 1e-6 // Newton-Raphson max |dx| stop criterion
	DefaultMaxIter   = 100  // Newton-Raphson iteration budget

	DefaultDiodeIs = 1e-14   // Diode saturation current (A)
	DefaultDiodeVt = 0.02585 // Diode thermal voltage (V)

	ShortAdmittance = 1e9 // Inductor admittance at omega = 0 (DC short in AC)

	MaxExpArg = 40.0 // Diode exponential argument limit for NR stability
)
