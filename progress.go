package palettize

import (
	"github.com/schollz/progressbar/v3"
)

// Progress is drawn wherever the logger writes, so it is silent unless the
// logger is
func (p *Palettize) progress(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(p.logger.Writer()),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionClearOnFinish(),
	)
}
