// Command fpfield is a small demonstration binary for the field package:
// it parses a modulus and two field elements from flags, performs one
// named operation, and prints the result. A thin main that wires library
// calls together with no logic of its own.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"math/big"
	"strings"

	"github.com/arcfield/prime/field"
)

// cliTag is the single Descriptor this binary uses; its Modulus is built
// once in main from the -modulus flag, since Go generics have no way to
// turn a runtime flag value into a type parameter.
type cliTag struct{}

var cliModulus *field.Modulus

func (cliTag) Describe() *field.Modulus { return cliModulus }

func main() {
	var (
		modulusFlag = flag.String("modulus", "", "prime modulus, decimal or 0x-prefixed hex (required)")
		opFlag      = flag.String("op", "", "operation: add|sub|mul|div|inv|sqrt|exp")
		xFlag       = flag.String("x", "0", "first operand")
		yFlag       = flag.String("y", "0", "second operand (ignored by inv/sqrt)")
		eFlag       = flag.String("e", "0", "exponent (exp only)")
		outMode     = flag.String("out", "dec", "output mode: dec|hex|bin")
		backendFlag = flag.String("backend", "auto", "backend: auto|bignum|montgomery|barrett")
	)
	flag.Parse()

	if *modulusFlag == "" || *opFlag == "" {
		flag.Usage()
		log.Fatal("fpfield: -modulus and -op are required")
	}

	p, ok := new(big.Int).SetString(*modulusFlag, 0)
	if !ok {
		log.Fatalf("fpfield: could not parse modulus %q", *modulusFlag)
	}

	backend, err := parseBackend(*backendFlag)
	if err != nil {
		log.Fatalf("fpfield: %v", err)
	}

	cliModulus, err = field.InitPrime(p, field.WithBackend(backend))
	if err != nil {
		log.Fatalf("fpfield: InitPrime failed: %v", err)
	}

	var x, y field.F[cliTag]
	if err := parseOperand(&x, *xFlag); err != nil {
		log.Fatalf("fpfield: bad -x: %v", err)
	}
	if err := parseOperand(&y, *yFlag); err != nil {
		log.Fatalf("fpfield: bad -y: %v", err)
	}

	var result field.F[cliTag]
	switch strings.ToLower(*opFlag) {
	case "add":
		result.Add(&x, &y)
	case "sub":
		result.Sub(&x, &y)
	case "mul":
		result.Mul(&x, &y)
	case "div":
		result.Divide(&x, &y)
	case "inv":
		result.Inv(&x)
	case "sqrt":
		if !result.Sqrt(&x) {
			log.Fatalf("fpfield: %v is not a quadratic residue mod %v", x.BigInt(), p)
		}
	case "exp":
		e, ok := new(big.Int).SetString(*eFlag, 0)
		if !ok {
			log.Fatalf("fpfield: could not parse exponent %q", *eFlag)
		}
		result.Exp(&x, e)
	default:
		log.Fatalf("fpfield: unknown -op %q", *opFlag)
	}

	mode, err := parseIoMode(*outMode)
	if err != nil {
		log.Fatalf("fpfield: %v", err)
	}
	var buf bytes.Buffer
	if _, err := result.WriteTo(&buf, mode); err != nil {
		log.Fatalf("fpfield: formatting result failed: %v", err)
	}
	fmt.Println(buf.String())
}

func parseOperand(z *field.F[cliTag], s string) error {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return fmt.Errorf("could not parse %q as an integer", s)
	}
	z.SetBigInt(v)
	return nil
}

func parseBackend(s string) (field.Backend, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return field.BackendAuto, nil
	case "bignum":
		return field.BackendBignum, nil
	case "montgomery":
		return field.BackendMontgomery, nil
	case "barrett":
		return field.BackendBarrett, nil
	default:
		return 0, fmt.Errorf("unknown backend %q", s)
	}
}

func parseIoMode(s string) (field.IoMode, error) {
	switch strings.ToLower(s) {
	case "dec":
		return field.IoDec, nil
	case "hex":
		return field.IoHex | field.IoPrefix, nil
	case "bin":
		return field.IoBin | field.IoPrefix, nil
	default:
		return 0, fmt.Errorf("unknown -out mode %q", s)
	}
}
