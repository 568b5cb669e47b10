package util_test

import (
	"time"

	"boardkeeper/pkg/util"

	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Retry", func() {

	It("should stop at the first success", func() {
		calls := 0
		err := util.Retry(3, func() error {
			calls++
			return nil
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(calls).To(Equal(1))
	})

	It("should retry until an attempt succeeds", func() {
		calls := 0
		err := util.Retry(3, func() error {
			calls++
			if calls < 3 {
				return errors.New("not yet")
			}
			return nil
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(calls).To(Equal(3))
	})

	It("should give up after the last attempt and return its error", func() {
		calls := 0
		err := util.Retry(3, func() error {
			calls++
			return errors.Errorf("attempt %d", calls)
		})
		Expect(err).To(MatchError("attempt 3"))
		Expect(calls).To(Equal(3))
	})
})

var _ = Describe("Truncate", func() {
	DescribeTable("should truncate with an ellipsis", func(input string, max int, expected string) {
		Expect(util.Truncate(input, max)).To(Equal(expected))
	},
		Entry("short strings untouched", "short", 45, "short"),
		Entry("long strings cut", "abcdefghij", 8, "abcde..."),
		Entry("exact length cut", "abcdefgh", 8, "abcde..."),
	)
})

var _ = Describe("BusinessDaysSince", func() {

	loc := time.UTC

	day := func(value string) time.Time {
		t, err := time.Parse(time.RFC3339, value)
		Expect(err).ToNot(HaveOccurred())
		return t
	}

	It("should count weekdays inclusively", func() {
		// Monday morning to Wednesday morning: Mon, Tue, Wed.
		Expect(util.BusinessDaysSince(day("2019-07-01T09:00:00Z"), day("2019-07-03T09:00:00Z"), loc)).To(Equal(3))
	})

	It("should skip weekends", func() {
		// Friday morning to Monday morning: Fri, Mon.
		Expect(util.BusinessDaysSince(day("2019-07-05T09:00:00Z"), day("2019-07-08T09:00:00Z"), loc)).To(Equal(2))
	})

	It("should roll timestamps after 3 PM over to the next day", func() {
		// Created Monday 4 PM counts as Tuesday.
		Expect(util.BusinessDaysSince(day("2019-07-01T16:00:00Z"), day("2019-07-02T09:00:00Z"), loc)).To(Equal(1))
	})
})
