package custom

import (
	"context"

	"github.com/hoopreel/hoopreel/internal/cache"
	"github.com/hoopreel/hoopreel/network"
	lua "github.com/yuin/gopher-lua"
)

// registerTLSClient injects the "http_tls" global module into the Lua state.
// Requests made through it present a Chrome TLS fingerprint.
//
//	http_tls.get(url [, headers])                      -> body
//	http_tls.request({method, url, headers, body, cache}) -> {status, body}
func registerTLSClient(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "get", L.NewFunction(httpTLSGet))
	L.SetField(mod, "request", L.NewFunction(httpTLSRequest))
	L.SetGlobal("http_tls", mod)
}

func stateContext(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func headersFromTable(tbl *lua.LTable) map[string]string {
	headers := make(map[string]string)
	if tbl != nil {
		tbl.ForEach(func(k, v lua.LValue) {
			headers[k.String()] = v.String()
		})
	}
	return headers
}

func httpTLSGet(L *lua.LState) int {
	url := L.CheckString(1)
	headers := headersFromTable(L.OptTable(2, nil))

	resp, err := network.DoTLS(stateContext(L), network.Request{URL: url, Headers: headers})
	if err != nil {
		L.RaiseError("http_tls.get failed: %s", err.Error())
		return 0
	}

	L.Push(lua.LString(resp.Body))
	return 1
}

func httpTLSRequest(L *lua.LState) int {
	opts := L.CheckTable(1)

	req := network.Request{
		Method: getString(opts, "method"),
		URL:    getString(opts, "url"),
		Body:   getString(opts, "body"),
	}

	if req.URL == "" {
		L.RaiseError("http_tls.request: url is required")
		return 0
	}

	if tbl, ok := opts.RawGetString("headers").(*lua.LTable); ok {
		req.Headers = headersFromTable(tbl)
	}

	shouldCache := lua.LVAsBool(opts.RawGetString("cache"))
	cacheKey := cache.GenerateKey(req.URL+req.Body, req.Method)

	var resp network.Response
	if !shouldCache || !cache.Read(cacheKey, &resp) {
		var err error
		if resp, err = network.DoTLS(stateContext(L), req); err != nil {
			L.RaiseError("http_tls.request failed: %s", err.Error())
			return 0
		}

		if shouldCache && resp.Status == 200 {
			_ = cache.Write(cacheKey, resp)
		}
	}

	result := L.NewTable()
	L.SetField(result, "status", lua.LNumber(resp.Status))
	L.SetField(result, "body", lua.LString(resp.Body))
	L.Push(result)
	return 1
}
