package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// FlagDescriptor ties a string flag to a viper config key.
type FlagDescriptor struct {
	FlagName    string
	ConfigKey   string
	Description string
}

// BindFlags registers a persistent string flag for each descriptor on cmd and
// binds it to its config key, so that an explicit flag overrides both the
// config file and the environment.
func BindFlags(cmd *cobra.Command, v *viper.Viper, flagDescriptors ...FlagDescriptor) error {
	for _, flagDesc := range flagDescriptors {
		cmd.PersistentFlags().String(flagDesc.FlagName, "", flagDesc.Description)

		flag := cmd.PersistentFlags().Lookup(flagDesc.FlagName)
		if flag == nil {
			return ErrFlagNotRegistered.Wrap(flagDesc.FlagName)
		}
		if err := v.BindPFlag(flagDesc.ConfigKey, flag); err != nil {
			return err
		}
	}
	return nil
}
