package config_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"boardkeeper/pkg/config"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const validConfig = `
org: acme
repo: widgets
timezone: America/New_York
projects:
  7:
    name: Core
    members: [Alice Smith]
    stateOwners:
      Ready for Deploy: Alice Smith
    ownsFiles: ["app/core/.*"]
  9:
    name: Mobile
    members: [Alice Smith, Bob Jones]
skipColumns: [Icebox]
states:
  - state: In Development
    labels: ["WIP :construction:"]
  - state: In Code Review
    labels: ["Code Review :mag:", ":eyes: Code Review"]
fallbackState: Unsorted
people:
  Alice Smith: {github: alice, slack: asmith}
  Bob Jones: {github: bob, slack: bjones}
`

func writeConfig(content string) string {
	dir, err := ioutil.TempDir("", "boardkeeper-config")
	Expect(err).ToNot(HaveOccurred())
	path := filepath.Join(dir, "boardkeeper.yaml")
	Expect(ioutil.WriteFile(path, []byte(content), 0600)).To(Succeed())
	return path
}

var _ = Describe("Load", func() {

	It("should load and derive everything eagerly", func() {
		path := writeConfig(validConfig)
		defer os.RemoveAll(filepath.Dir(path))

		cfg, err := config.Load(path)
		Expect(err).ToNot(HaveOccurred())

		Expect(cfg.Org).To(Equal("acme"))
		Expect(cfg.ProjectNumbers()).To(Equal([]int{7, 9}))
		Expect(cfg.Projects[7].Name).To(Equal("Core"))
		Expect(cfg.Location.String()).To(Equal("America/New_York"))
		Expect(cfg.States[0].State).To(Equal("In Development"))

		github, ok := cfg.Directory().ToGithubUser("alice smith")
		Expect(ok).To(BeTrue())
		Expect(github).To(Equal("alice"))
	})

	It("should default the timezone to UTC", func() {
		path := writeConfig(`
org: acme
repo: widgets
projects:
  7: {name: Core}
`)
		defer os.RemoveAll(filepath.Dir(path))

		cfg, err := config.Load(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Location).To(Equal(time.UTC))
	})

	It("should fail on an unknown timezone", func() {
		path := writeConfig(`
org: acme
repo: widgets
timezone: Mars/Olympus_Mons
projects:
  7: {name: Core}
`)
		defer os.RemoveAll(filepath.Dir(path))

		_, err := config.Load(path)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("timezone"))
	})

	It("should fail when org or repo is missing", func() {
		path := writeConfig(`
repo: widgets
projects:
  7: {name: Core}
`)
		defer os.RemoveAll(filepath.Dir(path))

		_, err := config.Load(path)
		Expect(err).To(HaveOccurred())
	})

	It("should fail when no projects are configured", func() {
		path := writeConfig(`
org: acme
repo: widgets
`)
		defer os.RemoveAll(filepath.Dir(path))

		_, err := config.Load(path)
		Expect(err).To(HaveOccurred())
	})

	It("should fail when the file does not exist", func() {
		_, err := config.Load("/nonexistent/boardkeeper.yaml")
		Expect(err).To(HaveOccurred())
	})
})
