package config_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/antekhub/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.BaseURL, convey.ShouldEqual, "https://antekhub.eng.unhas.ac.id/api")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.Timeout, convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.Output, convey.ShouldEqual, "json")
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsFile, convey.ShouldBeEmpty)
			convey.So(strings.HasSuffix(cfg.SessionFile, filepath.Join(".antekhub", "session.yaml")), convey.ShouldBeTrue)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
