package main

import (
	"fmt"
	"os"

	"github.com/BerryBytes/sessionctl/cmd/root"
	generalutils "github.com/BerryBytes/sessionctl/utils/general"
)

func main() {
	ctx := generalutils.HandleSignals()
	if err := root.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
