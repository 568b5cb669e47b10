package reconcile_test

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"

	"boardkeeper/pkg/boards"
	"boardkeeper/pkg/ghapi"
	"boardkeeper/pkg/reconcile"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("APIApplier", func() {

	var (
		server   *httptest.Server
		svc      *boards.Service
		cards    []map[string]interface{}
		cardURLs []string
	)

	BeforeEach(func() {
		cards = nil
		cardURLs = nil

		mux := http.NewServeMux()
		mux.HandleFunc("/projects/101/columns", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[
				{"id":11,"name":"To Do","cards_url":""},
				{"id":12,"name":"In Progress","cards_url":""}
			]`)
		})
		mux.HandleFunc("/projects/columns/", func(w http.ResponseWriter, r *http.Request) {
			body, _ := ioutil.ReadAll(r.Body)
			var payload map[string]interface{}
			Expect(json.Unmarshal(body, &payload)).To(Succeed())
			cards = append(cards, payload)
			cardURLs = append(cardURLs, r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id":900}`)
		})
		server = httptest.NewServer(mux)

		client := ghapi.New(ghapi.Auth{Token: "t", Username: "u"}, quietLog()).WithBaseURL(server.URL)
		svc = boards.NewService(client, "acme", "widgets", quietLog())
	})

	AfterEach(func() {
		server.Close()
	})

	addition := func() reconcile.Addition {
		return reconcile.Addition{
			PullRequest: boards.PullRequest{ID: 9042, Number: 42},
			Project:     boards.Project{ID: 101, Number: 7, Name: "Core", ColumnsURL: "/projects/101/columns"},
		}
	}

	It("should create the card in the project's first column by default", func() {
		applier := reconcile.NewAPIApplier(svc, reconcile.ColumnPolicy{}, quietLog())

		Expect(applier.Apply(addition())).To(Succeed())

		Expect(cardURLs).To(Equal([]string{"/projects/columns/11/cards"}))
		Expect(cards[0]["content_type"]).To(Equal("PullRequest"))
		Expect(cards[0]["content_id"]).To(BeNumerically("==", 9042))
	})

	It("should honor a named column policy, case-insensitively", func() {
		applier := reconcile.NewAPIApplier(svc, reconcile.ColumnPolicy{Column: "in progress"}, quietLog())

		Expect(applier.Apply(addition())).To(Succeed())
		Expect(cardURLs).To(Equal([]string{"/projects/columns/12/cards"}))
	})

	It("should fail when the named column does not exist", func() {
		applier := reconcile.NewAPIApplier(svc, reconcile.ColumnPolicy{Column: "Missing"}, quietLog())

		err := applier.Apply(addition())
		Expect(err).To(HaveOccurred())
		Expect(cardURLs).To(BeEmpty())
	})
})
