// Command chemlab analyses gas cart and Daniell cell experiment data.
//
// Usage:
//
//	chemlab template --kind gas > runs.csv
//	chemlab fit --csv runs.csv --kind gas --features vinegar_ml,bicarb_g
//	chemlab predict --csv runs.csv --kind gas --features vinegar_ml,bicarb_g --values 40,4
//	chemlab doe plan --kind daniell
//	chemlab doe analyze --kind gas --results distances.txt
//	chemlab import --csv runs.csv --out runs.clar
//	chemlab export --in runs.clar --csv -
//	chemlab config
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
