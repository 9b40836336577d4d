//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Medium is the kind of media a podcast publishes
// ENUM(audio,video,document)
type Medium string
