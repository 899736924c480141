package commands

import (
	"github.com/agiangrant/formkit/forms"
	"github.com/agiangrant/formkit/internal/logging"
)

// demoForm holds the controls of the demo form.
type demoForm struct {
	Form     *forms.Form
	Notify   *forms.CheckBox
	Archived *forms.CheckBox
	Speeds   []*forms.RadioButton
	Interval *forms.ComboBox
	Options  *forms.Button
	Menu     *forms.Menu
}

var speedNames = []string{"Fast", "Balanced", "Thorough"}

// buildDemo lays out the demo form in logical units.
func buildDemo(app *forms.Application, title string, size forms.Size) *demoForm {
	d := &demoForm{Form: app.NewForm(title)}
	d.Form.SetClientSize(size)

	heading := forms.NewLabel("Notifications")
	heading.SetBounds(forms.NewRect(12, 12, 220, 20))

	d.Notify = forms.NewCheckBox("Enable notifications")
	d.Notify.SetBounds(forms.NewRect(12, 36, 220, 24))
	d.Notify.OnCheckedChanged(func(cb *forms.CheckBox) {
		logging.Trace("checkbox.changed", map[string]any{"text": cb.Text(), "state": cb.CheckState().String()})
	})

	d.Archived = forms.NewCheckBox("Include archived")
	d.Archived.SetBounds(forms.NewRect(12, 64, 220, 24))
	d.Archived.SetThreeState(true)
	d.Archived.SetCheckState(forms.Indeterminate)

	group := forms.NewPanel()
	group.SetBounds(forms.NewRect(12, 96, 220, 84))
	for i, name := range speedNames {
		rb := forms.NewRadioButton(name)
		rb.SetBounds(forms.NewRect(0, i*28, 200, 24))
		rb.OnCheckedChanged(func(rb *forms.RadioButton) {
			if rb.Checked() {
				logging.Trace("radio.checked", rb.Text())
			}
		})
		d.Speeds = append(d.Speeds, rb)
		group.AddControl(rb)
	}
	d.Speeds[0].SetChecked(true)

	d.Interval = forms.NewComboBox("Hourly", "Daily", "Weekly", "Monthly")
	d.Interval.SetBounds(forms.NewRect(12, 188, 160, 24))
	d.Interval.SetSelectedIndex(1)
	d.Interval.OnSelectedIndexChanged(func(cb *forms.ComboBox) {
		logging.Trace("combo.selected", cb.SelectedItem())
	})

	d.Menu = app.NewContextMenu(
		forms.NewMenuItem("Theme", nil).AddItem(
			forms.NewMenuItem("Light", func(*forms.MenuItem) { app.SetTheme(forms.LightTheme()) }),
			forms.NewMenuItem("Dark", func(*forms.MenuItem) { app.SetTheme(forms.DarkTheme()) }),
		),
		forms.NewMenuItem("Reset", func(*forms.MenuItem) { d.Reset() }),
		forms.NewMenuItem("Quit", func(*forms.MenuItem) { d.Form.Close() }),
	)
	d.Menu.OnDeactivated(func() { logging.Trace("menu.deactivated", nil) })

	d.Options = forms.NewButton("Options")
	d.Options.SetBounds(forms.NewRect(12, 224, 100, 28))
	d.Options.OnClick(func(forms.Element) {
		b := d.Options.Bounds()
		if err := d.Menu.Show(d.Form, forms.Point{X: b.X, Y: b.Bottom()}); err != nil {
			app.Logger().Error("show menu", "err", err)
		}
	})

	d.Form.AddControl(heading, d.Notify, d.Archived, group, d.Interval, d.Options)
	return d
}

// Reset restores the initial control states.
func (d *demoForm) Reset() {
	d.Notify.SetChecked(false)
	d.Archived.SetCheckState(forms.Indeterminate)
	d.Speeds[0].SetChecked(true)
	d.Interval.SetSelectedIndex(1)
}
