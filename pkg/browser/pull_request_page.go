package browser

import (
	"regexp"
	"strings"
	"time"

	"boardkeeper/pkg/reconcile"
	"boardkeeper/pkg/util"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// PullRequestPage is a page object over the sidebar of a pull request page.
// It hides element lookup from the reconciliation engine.
type PullRequestPage struct {
	page  *rod.Page
	delay time.Duration
	log   *logrus.Entry
}

// VisitPullRequest navigates to a pull request and returns its page object.
func (s *Session) VisitPullRequest(url string) (reconcile.PullRequestPage, error) {
	if err := s.Visit(url); err != nil {
		return nil, err
	}
	return &PullRequestPage{
		page:  s.page,
		delay: s.cfg.StepDelay,
		log:   s.log,
	}, nil
}

// projectsForm finds the sidebar <form> for the Projects section. GitHub
// gives it no usable selector, so we scan the sidebar forms for the one whose
// text starts a "Projects" block.
func (p *PullRequestPage) projectsForm() (*rod.Element, error) {
	sidebar, err := p.page.Element("#partial-discussion-sidebar")
	if err != nil {
		return nil, errors.Wrap(err, "find discussion sidebar")
	}

	forms, err := sidebar.Elements("form")
	if err != nil {
		return nil, errors.Wrap(err, "list sidebar forms")
	}

	for _, form := range forms {
		text, err := form.Text()
		if err != nil {
			continue
		}
		if strings.Contains(text, "Projects\n") {
			return form, nil
		}
	}

	return nil, errors.New("projects section not found in sidebar")
}

// CurrentProjects returns the names of the projects the pull request is
// currently on. Sidebar elements may not be rendered yet right after a
// navigation, so the whole read is retried a few times.
func (p *PullRequestPage) CurrentProjects() ([]string, error) {
	var names []string

	err := util.Retry(3, func() error {
		names = names[:0]

		form, err := p.projectsForm()
		if err != nil {
			return err
		}

		links, err := form.Elements(".muted-link")
		if err != nil {
			return errors.Wrap(err, "list project links")
		}

		for _, link := range links {
			title, err := link.Attribute("title")
			if err != nil || title == nil {
				continue
			}
			// GitHub titles each link "<Column> in <Project>".
			parts := strings.Split(*title, " in ")
			names = append(names, parts[len(parts)-1])
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

// ToggleProject adds or removes one project through the sidebar popup. Each
// step pauses briefly to let the async UI settle. The toggle is not verified
// here; callers re-read the sidebar on their next run.
func (p *PullRequestPage) ToggleProject(name string) error {
	form, err := p.projectsForm()
	if err != nil {
		return err
	}

	// Open the Projects popup via its gear icon.
	gear, err := form.Element("summary")
	if err != nil {
		return errors.Wrap(err, "find projects gear icon")
	}
	if err := gear.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return errors.Wrap(err, "open projects popup")
	}
	p.pause()

	// Switch to the Repository tab.
	tab, err := p.page.ElementR(".select-menu-tab-nav", "Repository")
	if err != nil {
		return errors.Wrap(err, "find repository tab")
	}
	if err := tab.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return errors.Wrap(err, "switch to repository tab")
	}
	p.pause()

	// Filter the list down to the project.
	filter, err := p.page.Element("#project-sidebar-filter-field")
	if err != nil {
		return errors.Wrap(err, "find project filter field")
	}
	if err := filter.Input(name); err != nil {
		return errors.Wrap(err, "type project filter")
	}
	p.pause()

	// Click the matching entry.
	menu, err := p.page.Element(".js-project-menu-container")
	if err != nil {
		return errors.Wrap(err, "find project menu")
	}
	item, err := menu.ElementR(".select-menu-list label", regexp.QuoteMeta(name))
	if err != nil {
		return errors.Wrapf(err, "find project %q in menu", name)
	}
	if err := item.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return errors.Wrapf(err, "toggle project %q", name)
	}

	// Escape dismisses the popup.
	if err := p.page.Keyboard.Type(input.Escape); err != nil {
		return errors.Wrap(err, "dismiss projects popup")
	}

	return nil
}

func (p *PullRequestPage) pause() {
	time.Sleep(p.delay)
}
