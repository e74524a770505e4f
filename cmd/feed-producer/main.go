package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/muhammadchandra19/book-builder/internal/usecase/decoder"
	"github.com/muhammadchandra19/book-builder/internal/usecase/feedgen"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// recordWriter receives one framed record at a time.
type recordWriter interface {
	WriteRecord(ctx context.Context, symbol string, record []byte) error
	Close() error
}

type kafkaRecordWriter struct {
	writer *kafka.Writer
}

func (w *kafkaRecordWriter) WriteRecord(ctx context.Context, symbol string, record []byte) error {
	return w.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(symbol),
		Value: record,
		Time:  time.Now(),
	})
}

func (w *kafkaRecordWriter) Close() error {
	return w.writer.Close()
}

type fileRecordWriter struct {
	file *os.File
	buf  *bufio.Writer
}

func (w *fileRecordWriter) WriteRecord(_ context.Context, _ string, record []byte) error {
	_, err := w.buf.Write(record)
	return err
}

func (w *fileRecordWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// recordReader yields framed records and the symbol each one is for.
type recordReader func() (symbol string, record []byte, err error)

func generated(count int, opts *feedgen.Options) (recordReader, error) {
	g, err := feedgen.NewGenerator(opts)
	if err != nil {
		return nil, err
	}
	produced := 0
	return func() (string, []byte, error) {
		if produced >= count {
			return "", nil, io.EOF
		}
		produced++
		msg := g.Next()
		record, err := decoder.Encode(msg)
		return msg.Envelope().Symbol, record, err
	}, nil
}

func replayed(r io.Reader) recordReader {
	d := decoder.NewDecoder(nil)
	br := bufio.NewReader(r)
	return func() (string, []byte, error) {
		frame, err := d.ReadFrame(br)
		if err != nil {
			return "", nil, err
		}
		msg, err := d.DecodeFrame(frame)
		if err != nil {
			return "", nil, err
		}
		return msg.Envelope().Symbol, frame.Bytes(), nil
	}
}

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "book-feed", "Kafka topic name")
		in          = flag.String("in", "", "binary feed file to replay (optional, generates a feed if not provided)")
		out         = flag.String("out", "", "write the feed to this file instead of Kafka")
		delay       = flag.Duration("delay", 0, "Delay between records")
		count       = flag.Int("count", 1000, "Number of events to generate")
		symbols     = flag.String("symbols", "NVD,AAP", "Symbols to generate (comma-separated, at most 3 bytes each)")
		basePrice   = flag.Int("base-price", 3945, "Base price for generated orders")
		priceSpread = flag.Int("price-spread", 200, "Price spread range")
		maxSize     = flag.Uint64("max-size", 1000, "Largest generated order size")
		seed        = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	log, err := logger.NewLogger(logger.WithOutputPaths([]string{"stderr"}))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var next recordReader
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "open_input"})
			os.Exit(1)
		}
		defer f.Close()
		next = replayed(f)
	} else {
		next, err = generated(*count, &feedgen.Options{
			Symbols:     strings.Split(*symbols, ","),
			BasePrice:   int32(*basePrice),
			PriceSpread: int32(*priceSpread),
			MaxSize:     *maxSize,
			Seed:        *seed,
		})
		if err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "create_generator"})
			os.Exit(1)
		}
	}

	var writer recordWriter
	destination := *out
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "create_output"})
			os.Exit(1)
		}
		writer = &fileRecordWriter{file: f, buf: bufio.NewWriter(f)}
	} else {
		destination = "kafka://" + *topic
		writer = &kafkaRecordWriter{writer: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
			Topic:        *topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		}}
	}

	log.Info("producing feed",
		logger.Field{Key: "destination", Value: destination},
		logger.Field{Key: "input", Value: *in},
		logger.Field{Key: "delay", Value: delay.String()},
	)

	sent, err := produce(ctx, next, writer, *delay, log)
	if closeErr := writer.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "produce"}, logger.Field{Key: "sent", Value: sent})
		os.Exit(1)
	}
	log.Info("feed produced", logger.Field{Key: "records", Value: sent})
}

// produce copies records from next to writer until next is exhausted.
func produce(ctx context.Context, next recordReader, writer recordWriter, delay time.Duration, log logger.Interface) (int, error) {
	sent := 0
	for {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		symbol, record, err := next()
		if errors.Is(err, io.EOF) {
			return sent, nil
		}
		if err != nil {
			return sent, err
		}
		if err := writer.WriteRecord(ctx, symbol, record); err != nil {
			return sent, err
		}
		sent++

		if sent%1000 == 0 {
			log.Info("progress", logger.Field{Key: "records", Value: sent})
		}
		if delay > 0 {
			time.Sleep(delay)
		}
	}
}
