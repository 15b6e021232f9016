// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Valid annotators of polyphonic annotations, per the JKU PDD readme.
var defaultPolyphonicAnnotators = []string{
	"barlowAndMorgensternRevised",
	"bruhn",
	"schoenberg",
	"sectionalRepetitions",
	"tomCollins",
}

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "jku2jams")
	viper.SetDefault("main.log.enabled", false)
	viper.SetDefault("main.log.path", "jku2jams.log")
	viper.SetDefault("main.log.maxsize", 100)
	viper.SetDefault("main.log.maxbackups", 3)
	viper.SetDefault("main.log.maxage", 28)

	viper.SetDefault("dataset.annotationtypes", []string{"monophonic", "polyphonic"})
	viper.SetDefault("dataset.polyphonicannotators", defaultPolyphonicAnnotators)

	viper.SetDefault("annotation.namespace", "pattern_jku")
	viper.SetDefault("annotation.version", "August2013")
	viper.SetDefault("annotation.corpus", "JKU Development Dataset")
	viper.SetDefault("annotation.curator.name", "Tom Collins")
	viper.SetDefault("annotation.curator.email", "tom.collins@dmu.ac.uk")

	viper.SetDefault("output.indent", true)
}
