package workflow_test

import (
	"boardkeeper/pkg/workflow"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Classifier", func() {

	mapping := workflow.Mapping{
		{State: "In Development", Labels: []string{"WIP :construction:", "WIP"}},
		{State: "In Code Review", Labels: []string{"Code Review :mag:", ":eyes: Code Review"}},
		{State: "Ready for Deploy", Labels: []string{"QA OK :+1:", "WIP", "Shipped"}},
	}

	classifier := workflow.NewClassifier(mapping, "Unsorted")

	DescribeTable("should classify by first match in declared order", func(labels []string, expected string) {
		Expect(classifier.Classify(labels)).To(Equal(expected))
	},
		Entry("single label", []string{"WIP"}, "In Development"),
		Entry("label in a later state", []string{"Shipped"}, "Ready for Deploy"),
		Entry("first declared state wins over a later one sharing the label", []string{"WIP", "Shipped"}, "In Development"),
		Entry("case-insensitive", []string{"code review :mag:"}, "In Code Review"),
		Entry("unknown labels fall back", []string{"Product OK :+1"}, "Unsorted"),
		Entry("no labels fall back", []string{}, "Unsorted"),
	)

	It("should return an empty state when no fallback is configured", func() {
		bare := workflow.NewClassifier(mapping, "")
		Expect(bare.Classify([]string{"Product OK :+1"})).To(Equal(""))
	})

	DescribeTable("should report label applicability against the configured universe", func(labels []string, expected bool) {
		Expect(classifier.Applicable(labels)).To(Equal(expected))
	},
		Entry("configured label", []string{"WIP"}, true),
		Entry("configured label, different case", []string{"wip"}, true),
		Entry("unconfigured label", []string{"Product OK :+1"}, false),
		Entry("no labels", []string{}, false),
	)

	It("should list states in declared order with the fallback last", func() {
		Expect(classifier.States()).To(Equal([]string{
			"In Development", "In Code Review", "Ready for Deploy", "Unsorted",
		}))
	})
})
