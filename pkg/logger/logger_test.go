package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vdk888/knowledge/pkg/logger"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func parseJSON(buf *bytes.Buffer) map[string]any {
	var parsed map[string]any
	Expect(json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &parsed)).To(Succeed())
	return parsed
}

var _ = Describe("Logger", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	Describe("New", func() {
		It("writes key/value pairs with the text handler by default", func() {
			logger.New(logger.WithWriter(buf)).Info("durable storage call failed", "operation", "getConcepts")

			Expect(buf.String()).To(ContainSubstring("durable storage call failed"))
			Expect(buf.String()).To(ContainSubstring("operation=getConcepts"))
		})

		DescribeTable("levels",
			func(opts []logger.Option, visible bool) {
				l := logger.New(append(opts, logger.WithWriter(buf))...)
				l.Debug("computed recommendations")

				if visible {
					Expect(buf.String()).To(ContainSubstring("computed recommendations"))
				} else {
					Expect(buf.String()).To(BeEmpty())
				}
			},
			Entry("text, info", []logger.Option{logger.WithDebug(false)}, false),
			Entry("text, debug", []logger.Option{logger.WithDebug(true)}, true),
			Entry("json, debug", []logger.Option{logger.WithJSON(true), logger.WithDebug(true)}, true),
			Entry("pretty, info", []logger.Option{logger.WithPretty(true)}, false),
			Entry("pretty, debug", []logger.Option{logger.WithPretty(true), logger.WithDebug(true)}, true),
		)

		It("emits one JSON object per record", func() {
			logger.New(logger.WithWriter(buf), logger.WithJSON(true)).Info("seeded", "concepts", 17)

			parsed := parseJSON(buf)
			Expect(parsed["msg"]).To(Equal("seeded"))
			Expect(parsed["concepts"]).To(BeNumerically("==", 17))
		})

		It("reports the source location when asked", func() {
			logger.New(logger.WithWriter(buf), logger.WithJSON(true), logger.WithSource(true)).Info("with source")

			Expect(parseJSON(buf)).To(HaveKey(slog.SourceKey))
		})

		It("renders pretty output", func() {
			logger.New(logger.WithWriter(buf), logger.WithPretty(true)).Info("starting API server", "listen", ":8081")

			Expect(buf.String()).To(ContainSubstring("starting API server"))
			Expect(buf.String()).To(ContainSubstring(":8081"))
		})

		It("ignores a nil writer", func() {
			Expect(func() {
				logger.New(logger.WithWriter(nil), logger.WithDebug(true)).Debug("to stdout")
			}).NotTo(Panic())
		})

		It("binds fields and groups", func() {
			l := logger.New(logger.WithWriter(buf), logger.WithJSON(true))
			l.With("component", "fallback").WithGroup("request").Info("served", "method", "GET")

			parsed := parseJSON(buf)
			Expect(parsed["component"]).To(Equal("fallback"))
			Expect(parsed["request"]).To(HaveKeyWithValue("method", "GET"))
		})
	})

	Describe("Nop", func() {
		It("discards everything", func() {
			l := logger.Nop()
			Expect(l.Handler().Enabled(context.Background(), slog.LevelError)).To(BeFalse())
			Expect(func() {
				l.With("key", "value").WithGroup("group").Error("msg")
			}).NotTo(Panic())
		})
	})

	Describe("Multi", func() {
		It("dispatches to every logger that accepts the level", func() {
			debug := &bytes.Buffer{}
			multi := logger.Multi(
				logger.New(logger.WithWriter(buf)),
				logger.New(logger.WithWriter(debug), logger.WithDebug(true)),
			)

			multi.Debug("only debug")
			multi.Info("broadcast", "key", "val")

			Expect(buf.String()).NotTo(ContainSubstring("only debug"))
			Expect(buf.String()).To(ContainSubstring("broadcast"))
			Expect(debug.String()).To(ContainSubstring("only debug"))
			Expect(debug.String()).To(ContainSubstring("broadcast"))
		})

		It("carries attrs and groups to children", func() {
			multi := logger.Multi(logger.New(logger.WithWriter(buf), logger.WithJSON(true)))
			multi.With("component", "api").WithGroup("request").Info("handled", "status", 404)

			parsed := parseJSON(buf)
			Expect(parsed["component"]).To(Equal("api"))
			Expect(parsed["request"]).To(HaveKeyWithValue("status", BeNumerically("==", 404)))
		})

		It("keeps writing after a child fails", func() {
			multi := logger.Multi(
				logger.New(logger.WithWriter(failingWriter{})),
				logger.New(logger.WithWriter(buf)),
			)
			multi.Info("still delivered")
			Expect(buf.String()).To(ContainSubstring("still delivered"))
		})

		It("is disabled when every child is", func() {
			multi := logger.Multi(logger.Nop(), logger.Nop())
			Expect(multi.Handler().Enabled(context.Background(), slog.LevelError)).To(BeFalse())
		})
	})
})
