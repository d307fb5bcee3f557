package network

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hoopreel/hoopreel/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	Convey("Given a server echoing the user agent", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.Header.Get("User-Agent")))
		}))
		defer server.Close()

		Convey("Requests without a user agent get the browser one", func() {
			resp, err := Client.Get(server.URL)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			So(string(body), ShouldEqual, constant.UserAgent)
		})

		Convey("An explicit user agent is preserved", func() {
			req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
			req.Header.Set("User-Agent", "hoopreel-test")
			resp, err := Client.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			So(string(body), ShouldEqual, "hoopreel-test")
		})
	})
}
