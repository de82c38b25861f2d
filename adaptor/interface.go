package adaptor

// FloatAdaptor is the capability a DoubleParam leaf needs from its adaptor.
// *Gaussian and *Identity[float64] both satisfy it.
type FloatAdaptor interface {
	Adapt(value *float64, typicalRange float64, src Source) bool
	AdaptVector(values []float64, typicalRange float64, src Source) int
	UpdateOnStall() bool
}

// Int32Adaptor is the capability an Int32Param leaf needs from its
// adaptor. *FlipInt and *Identity[int32] both satisfy it.
type Int32Adaptor interface {
	Adapt(value *int32, typicalRange float64, src Source) bool
	AdaptVector(values []int32, typicalRange float64, src Source) int
	UpdateOnStall() bool
}

// BoolAdaptor is the capability a BoolParam leaf needs from its adaptor.
// *FlipBool and *Identity[bool] both satisfy it.
type BoolAdaptor interface {
	Adapt(value *bool, typicalRange float64, src Source) bool
	AdaptVector(values []bool, typicalRange float64, src Source) int
	UpdateOnStall() bool
}
