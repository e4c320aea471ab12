package constants

const SolverTolerance = 1e-6 // relative to the step being resolved
const SolverMaxIterations = 200
const BracketSamples = 16 // sub-intervals scanned for the first wall crossing
const BracketRefinements = 24
const StepFraction = 5. // dt keeps a particle within 1/StepFraction of a wavelength
const WallTolerance = 1e-9
const Quantile95 = 1.96
