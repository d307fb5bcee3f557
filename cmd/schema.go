package cmd

import (
	"encoding"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"

	"github.com/google/uuid"
	"github.com/hoopreel/hoopreel/config"
	"github.com/hoopreel/hoopreel/ffmpeg"
	"github.com/hoopreel/hoopreel/pipeline"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolP("config", "c", false, "Describe the config info --json output instead")
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the --json run output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return filepath.Base(t.PkgPath()) + "." + t.Name()
		}
		reflector.Mapper = textTypes

		var schema *jsonschema.Schema
		if lo.Must(cmd.Flags().GetBool("config")) {
			schema = reflector.Reflect([]config.Field{})
		} else {
			schema = reflector.Reflect(&pipeline.Result{})
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}

// textTypes describes types that marshal to JSON strings.
func textTypes(t reflect.Type) *jsonschema.Schema {
	switch t {
	case reflect.TypeOf(uuid.UUID{}):
		return &jsonschema.Schema{Type: "string", Format: "uuid"}
	case reflect.TypeOf(pipeline.State(0)):
		return enum(pipeline.Idle, pipeline.Discovering, pipeline.Retrieving, pipeline.Stitching, pipeline.Done, pipeline.Failed)
	case reflect.TypeOf(ffmpeg.Phase(0)):
		return enum(ffmpeg.FastPath, ffmpeg.Fallback)
	default:
		return nil
	}
}

func enum[T encoding.TextMarshaler](values ...T) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "string",
		Enum: lo.Map(values, func(v T, _ int) any {
			return string(lo.Must(v.MarshalText()))
		}),
	}
}
