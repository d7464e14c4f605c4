//go:build e2e

package scenarios

import (
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/startquantum/e2e/framework"
)

const skipAll = `skip:
  - conda
  - conda:shell-init
  - conda:env
  - dotnet:sdk
  - dotnet:templates
  - vscode
  - vscode:extensions
`

func TestVersion_ShowsVersion(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	framework.NewScenario(t).
		When("I run startquantum version", func(r *framework.Runner) *framework.Result {
			return r.Version()
		}).
		Then("the command succeeds", func(t *testing.T, r *framework.Result) {
			framework.AssertSuccess(t, r)
		}).
		And("the output shows version information", func(t *testing.T, r *framework.Result) {
			framework.AssertStdoutContains(t, r, "startquantum")
		})
}

func TestPlan_DefaultConfig(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	framework.NewScenario(t).
		When("I run startquantum plan without a config file", func(r *framework.Runner) *framework.Result {
			return r.Plan()
		}).
		Then("the command succeeds", func(t *testing.T, r *framework.Result) {
			framework.AssertSuccess(t, r)
		}).
		And("every step is planned in order", func(t *testing.T, r *framework.Result) {
			for _, id := range []string{"conda", "conda:shell-init", "conda:env", "dotnet:sdk", "dotnet:templates", "vscode", "vscode:extensions"} {
				framework.AssertPlanned(t, r, id, "yes")
			}
		})
}

func TestPlan_SkipAndOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	framework.NewScenario(t).
		Given("a config that skips VS Code", func(env *framework.Environment) {
			env.WriteConfig("skip: [vscode]\n")
		}).
		When("I plan only the conda environment and VS Code", func(r *framework.Runner) *framework.Result {
			return r.Plan("--only", "conda:env,vscode")
		}).
		Then("the command succeeds", func(t *testing.T, r *framework.Result) {
			framework.AssertSuccess(t, r)
		}).
		And("the selected steps run even when skipped", func(t *testing.T, r *framework.Result) {
			framework.AssertPlanned(t, r, "conda:env", "yes")
			framework.AssertPlanned(t, r, "vscode", "yes")
			framework.AssertPlanned(t, r, "conda", "no")
			framework.AssertPlanned(t, r, "dotnet:sdk", "no")
		})
}

func TestPlan_UnknownStep(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	framework.NewScenario(t).
		When("I plan a step that does not exist", func(r *framework.Runner) *framework.Result {
			return r.Plan("--only", "julia")
		}).
		Then("the command fails with a suggestion", func(t *testing.T, r *framework.Result) {
			framework.AssertUserError(t, r, "step 'julia' not found")
		})
}

func TestCheck_NothingInstalled(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	framework.NewScenario(t).
		Given("a config that skips .NET", func(env *framework.Environment) {
			env.WriteConfig("skip: [dotnet:sdk]\n")
		}).
		When("I run startquantum check with an empty PATH", func(r *framework.Runner) *framework.Result {
			return r.Check()
		}).
		Then("the command succeeds", func(t *testing.T, r *framework.Result) {
			framework.AssertSuccess(t, r)
		}).
		And("conda is reported missing", func(t *testing.T, r *framework.Result) {
			framework.AssertChecked(t, r, "conda", "not-installed")
			framework.AssertChecked(t, r, "conda:env", "not-installed")
			framework.AssertChecked(t, r, "conda:shell-init", "unknown")
		}).
		And("the skipped step is declined", func(t *testing.T, r *framework.Result) {
			framework.AssertChecked(t, r, "dotnet:sdk", "declined")
		})
}

func TestRun_InvalidConfig(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	framework.NewScenario(t).
		Given("a config with an unknown step", func(env *framework.Environment) {
			env.WriteConfig("skip: [julia]\n")
		}).
		When("I run startquantum", func(r *framework.Runner) *framework.Result {
			return r.Run("--yes")
		}).
		Then("the problem is reported", func(t *testing.T, r *framework.Result) {
			framework.AssertUserError(t, r, "the configuration has 1 problem(s):")
		})
}

func TestRun_EverythingSkipped(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	scenario := framework.NewScenario(t)
	logPath := filepath.Join(scenario.Environment().RootDir(), "startquantum.log")

	scenario.
		Given("a config that skips every step", func(env *framework.Environment) {
			env.WriteConfig(skipAll)
		}).
		When("I run startquantum with a log file", func(r *framework.Runner) *framework.Result {
			return r.Bootstrap("--yes", "--log-file", logPath)
		}).
		Then("the command succeeds", func(t *testing.T, r *framework.Result) {
			framework.AssertSuccess(t, r)
		}).
		And("nothing is installed", func(t *testing.T, r *framework.Result) {
			framework.AssertStdoutContains(t, r, "Skipping Conda; it is disabled in the configuration.")
			framework.AssertStdoutContains(t, r, "Installation completed! The following installation steps were performed:")
			framework.AssertStdoutContains(t, r, "(nothing needed to be installed)")
		}).
		And("the JSON log carries the session", func(t *testing.T, _ *framework.Result) {
			framework.AssertFileContains(t, scenario.Environment(), "startquantum.log", `"session":`)
		})
}

func TestRun_DecliningEverything(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	framework.NewScenario(t).
		Given("a config with only the conda steps", func(env *framework.Environment) {
			env.WriteConfig("skip: [dotnet:sdk, dotnet:templates, vscode, vscode:extensions]\n")
		}).
		When("I answer no to the conda prompt", func(r *framework.Runner) *framework.Result {
			return r.WithAnswers("n").Bootstrap()
		}).
		Then("the command succeeds", func(t *testing.T, r *framework.Result) {
			framework.AssertSuccess(t, r)
		}).
		And("the conda steps are vetoed", func(t *testing.T, r *framework.Result) {
			framework.AssertStdoutContains(t, r, "Install Conda?")
			framework.AssertStdoutContains(t, r, "Not installing Conda.")
			framework.AssertStdoutContains(t, r, "Skipping Conda environment for quantum development because Conda was declined.")
			framework.AssertStdoutNotContains(t, r, "- Conda")
		})
}
