package qunit_test

import (
	"fmt"

	"github.com/specvital/qunit-codemod/pkg/codemod/qunit"
)

func ExampleTransform() {
	out, err := qunit.Transform("module('Foo', { setup: function () {} });\ntest('works', function () {});\n")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Print(out)
	// Output:
	// module('Foo', { beforeEach: function () {} });
	// import { module, test } from 'ember-qunit';
	// test('works', function (assert) {});
}
