package field

import "github.com/arcfield/prime/internal/callcounters"

// Call counter ids for the three backends' multiplication entry points,
// one per field backend operation: benchmarks built with -tags=callcounters
// can assert that, say, a Modulus configured with BackendMontgomery
// actually dispatches through montgomeryMul and not some
// accidentally-left-active fallback.
const (
	CCMulBignum     callcounters.Id = "Field.Mul.Bignum"
	CCMulMontgomery callcounters.Id = "Field.Mul.Montgomery"
	CCMulBarrett    callcounters.Id = "Field.Mul.Barrett"
)

func init() {
	callcounters.CreateHierarchicalCallCounter(CCMulBignum, "Field Mul (bignum backend)", "")
	callcounters.CreateHierarchicalCallCounter(CCMulMontgomery, "Field Mul (Montgomery backend)", "")
	callcounters.CreateHierarchicalCallCounter(CCMulBarrett, "Field Mul (Barrett backend)", "")
}
