package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/vdk888/knowledge/pkg/eventstream"
	"github.com/vdk888/knowledge/pkg/knowledge"
)

type recordingWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

var _ = Describe("Publisher", func() {
	var (
		w *recordingWriter
		p *Publisher
	)

	BeforeEach(func() {
		w = &recordingWriter{}
		p = newPublisher(w, "knowledge.progress")
	})

	Describe("NewPublisher", func() {
		It("requires brokers and a topic", func() {
			_, err := NewPublisher(Config{Topic: "t"})
			Expect(err).To(HaveOccurred())

			_, err = NewPublisher(Config{Brokers: []string{"localhost:9092"}})
			Expect(err).To(HaveOccurred())
		})

		It("configures a hashing writer", func() {
			pub, err := NewPublisher(Config{Brokers: []string{"localhost:9092"}, Topic: "knowledge.progress"})
			Expect(err).NotTo(HaveOccurred())

			kw, ok := pub.w.(*kafkago.Writer)
			Expect(ok).To(BeTrue())
			Expect(kw.Topic).To(Equal("knowledge.progress"))
			Expect(kw.Balancer).To(BeAssignableToTypeOf(&kafkago.Hash{}))
			Expect(pub.Close()).To(Succeed())
		})
	})

	It("writes one message keyed by user id", func() {
		event := eventstream.NewProgressEvent(
			knowledge.UserProgress{ID: 9, UserID: 42, ConceptID: 3, IsLearned: true},
			eventstream.ProgressUpserted, "req-7", time.Now(),
		)

		Expect(p.PublishProgress(context.Background(), event)).To(Succeed())
		Expect(w.msgs).To(HaveLen(1))

		msg := w.msgs[0]
		Expect(string(msg.Key)).To(Equal("42"))
		Expect(msg.Headers).To(ContainElement(kafkago.Header{Key: "event_type", Value: []byte(eventstream.EventTypeProgressUpdated)}))

		var decoded eventstream.ProgressEvent
		Expect(json.Unmarshal(msg.Value, &decoded)).To(Succeed())
		Expect(decoded.EventID).To(Equal(event.EventID))
		Expect(decoded.Progress.ConceptID).To(Equal(int64(3)))
	})

	It("rejects nil events", func() {
		Expect(p.PublishProgress(context.Background(), nil)).To(MatchError(eventstream.ErrNilProgressEvent))
		Expect(w.msgs).To(BeEmpty())
	})

	It("wraps write errors", func() {
		w.err = errors.New("leader not available")
		event := eventstream.NewProgressEvent(knowledge.UserProgress{UserID: 1}, eventstream.ProgressPatched, "", time.Now())

		err := p.PublishProgress(context.Background(), event)
		Expect(err).To(MatchError(ContainSubstring("knowledge.progress")))
		Expect(errors.Is(err, w.err)).To(BeTrue())
	})

	It("closes the writer", func() {
		Expect(p.Close()).To(Succeed())
		Expect(w.closed).To(BeTrue())
	})
})
