package reconcile_test

import (
	"io/ioutil"

	"boardkeeper/pkg/boards"
	"boardkeeper/pkg/config"
	"boardkeeper/pkg/people"
	"boardkeeper/pkg/reconcile"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

func quietLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	return logrus.NewEntry(logger)
}

var (
	projects = []boards.Project{
		{ID: 101, Number: 7, Name: "Core"},
		{ID: 102, Number: 9, Name: "Mobile"},
	}

	configs = map[int]config.ProjectConfig{
		7: {Name: "Core", Members: []string{"Alice Smith"}},
		9: {Name: "Mobile", Members: []string{"Alice Smith", "Bob Jones"}},
	}

	directory = people.NewDirectory(map[string]people.Usernames{
		"Alice Smith": {Github: "alice", Slack: "asmith"},
		"Bob Jones":   {Github: "bob", Slack: "bjones"},
	})
)

func newReconciler() *reconcile.Reconciler {
	return reconcile.New(projects, configs, directory, quietLog())
}

var _ = Describe("Reconciler", func() {

	prByAlice := boards.PullRequest{ID: 9042, Number: 42, User: boards.User{Login: "Alice"}, HTMLURL: "https://github.com/acme/widgets/pull/42"}
	prByBob := boards.PullRequest{ID: 9043, Number: 43, User: boards.User{Login: "bob"}, HTMLURL: "https://github.com/acme/widgets/pull/43"}
	prByStranger := boards.PullRequest{ID: 9044, Number: 44, User: boards.User{Login: "mallory"}}

	Describe("Plan", func() {

		It("should add a PR to every project its author belongs to but is missing from", func() {
			r := newReconciler()

			additions := r.Plan([]boards.PullRequest{prByAlice}, reconcile.CurrentMemberships{
				7: {},
				9: {42: true},
			})

			Expect(additions).To(HaveLen(1))
			Expect(additions[0].Project.Number).To(Equal(7))
			Expect(additions[0].PullRequest.Number).To(Equal(42))
		})

		It("should ignore authors outside every member list", func() {
			r := newReconciler()

			additions := r.Plan([]boards.PullRequest{prByStranger}, reconcile.CurrentMemberships{})
			Expect(additions).To(BeEmpty())
		})

		It("should plan nothing when memberships already match", func() {
			r := newReconciler()

			additions := r.Plan([]boards.PullRequest{prByAlice, prByBob}, reconcile.CurrentMemberships{
				7: {42: true},
				9: {42: true, 43: true},
			})
			Expect(additions).To(BeEmpty())
		})

		It("should be idempotent once planned additions are reflected in current state", func() {
			r := newReconciler()
			current := reconcile.CurrentMemberships{7: {}, 9: {}}

			first := r.Plan([]boards.PullRequest{prByAlice, prByBob}, current)
			Expect(first).ToNot(BeEmpty())

			for _, addition := range first {
				current[addition.Project.Number][addition.PullRequest.Number] = true
			}

			second := r.Plan([]boards.PullRequest{prByAlice, prByBob}, current)
			Expect(second).To(BeEmpty())
		})
	})

	Describe("ExpectedProjects", func() {

		It("should resolve members through the directory, case-insensitively", func() {
			r := newReconciler()
			Expect(r.ExpectedProjects("ALICE")).To(Equal([]int{7, 9}))
			Expect(r.ExpectedProjects("bob")).To(Equal([]int{9}))
			Expect(r.TrackedAuthor("mallory")).To(BeFalse())
		})
	})

	Describe("ApplyUI", func() {

		It("should toggle only the missing projects", func() {
			r := newReconciler()

			visitor := &fakeVisitor{pages: map[string]*fakePage{
				prByAlice.HTMLURL: {current: []string{"Mobile"}},
			}}

			Expect(r.ApplyUI([]boards.PullRequest{prByAlice}, visitor)).To(Succeed())

			page := visitor.pages[prByAlice.HTMLURL]
			Expect(page.toggled).To(Equal([]string{"Core"}))
		})

		It("should not visit pages for untracked authors", func() {
			r := newReconciler()

			visitor := &fakeVisitor{pages: map[string]*fakePage{}}
			Expect(r.ApplyUI([]boards.PullRequest{prByStranger}, visitor)).To(Succeed())
			Expect(visitor.visited).To(BeEmpty())
		})

		It("should toggle nothing on a second pass once the sidebar shows the projects", func() {
			r := newReconciler()

			visitor := &fakeVisitor{pages: map[string]*fakePage{
				prByAlice.HTMLURL: {current: []string{"Core", "Mobile"}},
			}}

			Expect(r.ApplyUI([]boards.PullRequest{prByAlice}, visitor)).To(Succeed())
			Expect(visitor.pages[prByAlice.HTMLURL].toggled).To(BeEmpty())
		})
	})
})

type fakePage struct {
	current []string
	toggled []string
}

func (p *fakePage) CurrentProjects() ([]string, error) {
	return p.current, nil
}

func (p *fakePage) ToggleProject(name string) error {
	p.toggled = append(p.toggled, name)
	return nil
}

type fakeVisitor struct {
	pages   map[string]*fakePage
	visited []string
}

func (v *fakeVisitor) VisitPullRequest(url string) (reconcile.PullRequestPage, error) {
	v.visited = append(v.visited, url)
	page, ok := v.pages[url]
	if !ok {
		page = &fakePage{}
		v.pages[url] = page
	}
	return page, nil
}
