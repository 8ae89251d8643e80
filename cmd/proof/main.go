// Command proof is the standalone CLI surface of the proof core: verify
// a .proof file, print its header/digest, or report point-table
// statistics for planning a cache, without running the PRP loop itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/olympichek/gpuowl/engine"
	"github.com/olympichek/gpuowl/proof"
	"github.com/olympichek/gpuowl/proofset"
	"github.com/olympichek/gpuowl/verifier"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "verify":
		err = runVerify(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "points":
		err = runPoints(os.Args[2:])
	case "diskusage":
		err = runDiskUsage(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "proof:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  proof verify <file>
  proof info <file>
  proof points <exponent> <power>
  proof diskusage <exponent> <power>`)
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("verify requires exactly one proof file argument")
	}

	f, err := proof.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	eng := engine.NewMathBigEngine(f.E)
	result, err := verifier.Verify(context.Background(), f, eng, nil)
	if err != nil {
		return err
	}

	verdict := "composite"
	if result.IsPrime {
		verdict = "probable prime"
	}
	fmt.Printf("proof: %d is %s, proof verified\n", f.E, verdict)
	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("info requires exactly one proof file argument")
	}

	info, err := proof.GetInfo(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("power=%d\n", info.Power)
	fmt.Printf("exponent=%d\n", info.E)
	if len(info.KnownFactors) > 0 {
		fmt.Printf("knownFactors=%v\n", info.KnownFactors)
	}
	fmt.Printf("md5=%s\n", info.MD5)
	fmt.Printf("multihash=%s\n", info.Multihash)
	return nil
}

func runPoints(args []string) error {
	fs := flag.NewFlagSet("points", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("points requires <exponent> <power>")
	}
	e, power, err := parseExponentPower(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	for _, p := range proofset.Points(e, power) {
		fmt.Println(p)
	}
	return nil
}

func runDiskUsage(args []string) error {
	fs := flag.NewFlagSet("diskusage", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("diskusage requires <exponent> <power>")
	}
	e, power, err := parseExponentPower(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	fmt.Printf("%.3f GiB\n", proofset.DiskUsageGB(e, power))
	return nil
}

func parseExponentPower(eStr, powerStr string) (e, power uint32, err error) {
	e64, err := strconv.ParseUint(eStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid exponent %q", eStr)
	}
	p64, err := strconv.ParseUint(powerStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid power %q", powerStr)
	}
	return uint32(e64), uint32(p64), nil
}
