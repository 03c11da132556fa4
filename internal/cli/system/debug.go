package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daycards/internal/cli"
	"github.com/julianstephens/daycards/internal/logger"
)

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"storage":     ctx.Provider.GetConfigPath(),
		"config_dir":  ctx.Config.ConfigDir,
		"config_file": ctx.Config.FilePath,
		"log":         logger.Path(),
	}
	return printJSON(ctx, output)
}

// DebugDumpCmd prints every stored slot, including keys daycards no longer reads.
type DebugDumpCmd struct{}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Provider.Keys()
	if err != nil {
		return fmt.Errorf("failed to list slots: %w", err)
	}

	slots := make(map[string]string, len(keys))
	for _, key := range keys {
		value, ok, err := ctx.Provider.GetItem(key)
		if err != nil {
			return fmt.Errorf("failed to read slot %s: %w", key, err)
		}
		if ok {
			slots[key] = value
		}
	}
	return printJSON(ctx, map[string]interface{}{"slots": slots})
}

func printJSON(ctx *cli.Context, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Printf("%s\n", jsonBytes)
	return nil
}
