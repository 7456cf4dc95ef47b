package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/quorumlabs/vaultgate/pkg/script"
)

var (
	deriveCmd = &cobra.Command{
		Use:          "derive <script-file>",
		Short:        "derive the currency symbol and address of a parameterized policy script",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runDerive,
	}
)

func init() {
	deriveCmd.Flags().String("param", "", "parameter applied to the script")
}

func runDerive(cmd *cobra.Command, args []string) error {
	code, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrap(err, "reading script")
	}

	param, _ := cmd.Flags().GetString("param")

	s := &script.Script{Code: code, Param: []byte(param)}

	sym, err := s.CurrencySymbol()
	if err != nil {
		return errors.Wrap(err, "deriving currency symbol")
	}

	addr, err := s.Address()
	if err != nil {
		return errors.Wrap(err, "deriving address")
	}

	fmt.Printf("symbol:  %s\n", sym)
	fmt.Printf("address: %s\n", addr)

	return nil
}
