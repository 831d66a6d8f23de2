package main

import "flag"
import "log"
import "net/http"
import "os"

import "github.com/neurlang/circlecount/datasets/circles"
import "github.com/neurlang/circlecount/history"
import "github.com/neurlang/circlecount/model"
import "github.com/neurlang/circlecount/store"

func main() {
	preset := flag.String("model", "conv_reg", "model preset: reg, cls, conv_reg or conv_cls")
	paramsFile := flag.String("params", "", "model params .json file, overrides -model")
	base := flag.String("base", model.BaseDir, "model store directory")
	hist := flag.String("history", "", "sqlite training history database")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	l := log.New(os.Stderr, "", log.LstdFlags)

	params, err := model.LookupParams(*preset, *paramsFile)
	if err != nil {
		l.Fatal(err)
	}
	m, err := model.Load(params, false, model.Options{
		Logger:   l,
		Store:    store.New(*base),
		Provider: circles.Provider{},
	})
	if err != nil {
		l.Fatal(err)
	}
	s := &server{m: m}
	if *hist != "" {
		s.history, err = history.Open(*hist)
		if err != nil {
			l.Fatal(err)
		}
		defer s.history.Close()
	}
	l.Printf("serving %s on %s", m.Name(), *addr)
	l.Fatal(http.ListenAndServe(*addr, newRouter(s)))
}
