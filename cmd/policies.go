package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli"
	"github.com/warpdl/warpcookie/cmd/common"
	"github.com/warpdl/warpcookie/pkg/cookie"
	"github.com/warpdl/warpcookie/pkg/cookiespec"
)

const (
	policyColumn  = 16
	versionColumn = 9
)

func policies(ctx *cli.Context) error {
	registry := cookiespec.NewDefaultRegistry()
	w := common.Out(ctx)

	sep := "+" + strings.Repeat("-", policyColumn) + "+" + strings.Repeat("-", versionColumn) + "+"
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "|%s|%s|\n", common.Beaut("Policy", policyColumn), common.Beaut("Version", versionColumn))
	fmt.Fprintln(w, sep)
	for _, name := range registry.Names() {
		spec, err := registry.NewSpec(name, cookie.Params{})
		if err != nil {
			return err
		}
		label := name
		if name == cookie.PolicyBestMatch {
			label += "*"
		}
		fmt.Fprintf(w, "|%s|%s|\n", common.Beaut(label, policyColumn), common.Beaut(strconv.Itoa(spec.Version()), versionColumn))
	}
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, "* default policy")
	return nil
}
